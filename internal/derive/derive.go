// Package derive rebuilds derived ledger sheets from the current state of
// all bank sheets. A rebuild is a pure, idempotent function of the bank rows
// and settings: it wholesale-replaces the target sheet's rows, so any manual
// edits made directly to a derived sheet are lost on the next rebuild.
package derive

import (
	"sort"
	"strconv"
	"time"

	"github.com/banknote-dev/banknote/internal/model"
	"github.com/banknote-dev/banknote/internal/numfmt"
	"github.com/banknote-dev/banknote/internal/schema"
)

// Rule configures one derived sheet: which bank-row subjects feed it, which
// bank column the amount is read from, which column of the derived row it is
// written to, and whether the balance column is filled with the
// home-currency conversion. The bank-fee sheet leaves its balance blank.
type Rule struct {
	Target      string
	Subjects    []string
	Source      string // bank column read: "debit" or "credit"
	Dest        string // derived column written
	FillBalance bool
}

// Rules is the derivation configuration for the predefined derived sheets.
// Income arrives as a bank debit and is written to the credit column of the
// income ledgers; outflows are bank credits written to debit columns. The
// capital ledger has only a debit column, so its rule maps debit to debit.
func Rules() []Rule {
	return []Rule{
		{Target: "銷售收入", Subjects: []string{"銷售收入"}, Source: "debit", Dest: "credit", FillBalance: true},
		{Target: "銷售成本", Subjects: []string{"銷售成本"}, Source: "credit", Dest: "debit", FillBalance: true},
		{Target: "銀行費用", Subjects: []string{"銀行費用"}, Source: "credit", Dest: "debit", FillBalance: false},
		{Target: "利息收入", Subjects: []string{"利息收入"}, Source: "debit", Dest: "credit", FillBalance: true},
		{Target: "應付費用", Subjects: []string{"應付費用"}, Source: "credit", Dest: "debit", FillBalance: true},
		{Target: "董事往來", Subjects: []string{"董事往來"}, Source: "credit", Dest: "debit", FillBalance: true},
		{Target: "股本", Subjects: []string{"股本"}, Source: "debit", Dest: "debit", FillBalance: true},
	}
}

// RuleFor returns the derivation rule for a sheet name, if it has one.
func RuleFor(name string) (Rule, bool) {
	for _, r := range Rules() {
		if r.Target == name {
			return r, true
		}
	}
	return Rule{}, false
}

// Rebuild computes the full row collection for a derived sheet by scanning
// every bank sheet for rows whose subject is in the rule's match list and
// whose source cell is non-empty. Emitted rows carry the source row's date,
// description and invoice; the amount lands in the rule's dest column, and
// the balance holds the amount converted with the source bank sheet's
// exchange rate. Rows are stable-sorted ascending by parsed date (unparsable
// dates sort earliest) and renumbered 1..N with positional ids, so an
// unchanged input yields byte-identical output.
func Rebuild(rule Rule, sheets map[string]*model.Sheet, settings model.Settings) []model.Row {
	var out []model.Row
	for _, name := range bankNames(sheets) {
		rate := numfmt.Parse(settings.RateFor(name))
		for _, src := range sheets[name].Rows {
			if !matches(rule, src) {
				continue
			}
			amount := sourceCell(rule, src)
			row := model.Row{
				Date:    src.Date,
				Subject: src.Subject,
				Desc:    src.Desc,
				Invoice: src.Invoice,
			}
			if rule.Dest == "debit" {
				row.Debit = numfmt.Format(numfmt.Parse(amount), false)
			} else {
				row.Credit = numfmt.Format(numfmt.Parse(amount), false)
			}
			if rule.FillBalance {
				row.Balance = numfmt.Format(numfmt.Parse(amount).Mul(rate), false)
			}
			out = append(out, row)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return ParseDate(out[i].Date).Before(ParseDate(out[j].Date))
	})
	for i := range out {
		out[i].Seq = i + 1
		out[i].ID = positionalID(rule.Target, i+1)
	}
	return out
}

func matches(rule Rule, row model.Row) bool {
	if sourceCell(rule, row) == "" {
		return false
	}
	for _, s := range rule.Subjects {
		if row.Subject == s {
			return true
		}
	}
	return false
}

func sourceCell(rule Rule, row model.Row) string {
	if rule.Source == "debit" {
		return row.Debit
	}
	return row.Credit
}

// positionalID is deterministic so that re-deriving an unchanged input
// reproduces identical rows.
func positionalID(target string, seq int) string {
	return target + "-row-" + strconv.Itoa(seq)
}

// bankNames returns the bank sheets in a deterministic scan order.
func bankNames(sheets map[string]*model.Sheet) []string {
	var names []string
	for _, def := range schema.DefaultSheets() {
		if def.Kind == model.KindBank {
			if _, ok := sheets[def.Name]; ok {
				names = append(names, def.Name)
			}
		}
	}
	var extra []string
	for name := range sheets {
		if schema.KindOf(name) == model.KindBank && !contains(names, name) {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	return append(names, extra...)
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

// dateLayouts are tried in order when sorting by the free-text date column.
var dateLayouts = []string{
	"2006-01-02",
	"2006/1/2",
	"2006.1.2",
	"1/2/2006",
}

// ParseDate casts a free-text date cell for sorting. Unparsable values
// return the zero time and therefore sort earliest.
func ParseDate(text string) time.Time {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return t
		}
	}
	return time.Time{}
}
