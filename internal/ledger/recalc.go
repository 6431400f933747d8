// Package ledger recomputes balance cells and summary totals over in-memory
// row collections. All arithmetic is decimal; inputs and outputs are the
// display strings the grids hold.
package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/banknote-dev/banknote/internal/model"
	"github.com/banknote-dev/banknote/internal/numfmt"
)

// BalancePolicy names how a sheet kind derives its balance column. The
// behavior differs by kind and is kept as distinct strategies rather than
// unified into one algorithm.
type BalancePolicy int

const (
	// RunningTotal folds left to right from the row-0 seed:
	// balance[i] = balance[i-1] + debit[i] - credit[i].
	RunningTotal BalancePolicy = iota
	// PerRowConverted derives each row's balance independently from its own
	// movement multiplied by the sheet's exchange rate.
	PerRowConverted
	// PerRowNet derives each row's balance as debit minus credit, with no
	// currency conversion.
	PerRowNet
	// Untouched leaves the balance column alone. The bank-fee ledger's
	// balance is written only by derivation, which leaves it blank, and
	// recalculation must not fill it in.
	Untouched
)

// PolicyFor selects the balance policy for a sheet kind.
func PolicyFor(kind model.SheetKind) BalancePolicy {
	switch kind {
	case model.KindBank:
		return RunningTotal
	case model.KindFee:
		return Untouched
	case model.KindAdminFee:
		return PerRowNet
	default:
		return PerRowConverted
	}
}

// Recalculate rewrites every balance cell of the row sequence in place
// according to the kind's policy. For bank sheets row 0's balance is the
// user-set opening seed and is re-formatted, not recomputed; a missing or
// unparsable seed counts as zero. Re-formatting the seed uses the plain
// display style, which drops the sign, so a negative seed is stored as its
// absolute value and the sign is lost. Any insert or delete requires a full
// re-fold since every downstream balance depends on all upstream rows.
func Recalculate(rows []model.Row, kind model.SheetKind, rate decimal.Decimal) {
	if len(rows) == 0 {
		return
	}
	switch PolicyFor(kind) {
	case RunningTotal:
		bal := numfmt.Parse(rows[0].Balance)
		rows[0].Balance = numfmt.Format(bal, false)
		for i := 1; i < len(rows); i++ {
			bal = bal.Add(numfmt.Parse(rows[i].Debit)).Sub(numfmt.Parse(rows[i].Credit))
			rows[i].Balance = numfmt.Format(bal, false)
		}
	case PerRowConverted:
		field := movementField(kind)
		for i := range rows {
			cell := rows[i].Credit
			if field == "debit" {
				cell = rows[i].Debit
			}
			if cell == "" {
				rows[i].Balance = ""
				continue
			}
			rows[i].Balance = numfmt.Format(numfmt.Parse(cell).Mul(rate), false)
		}
	case PerRowNet:
		for i := range rows {
			if rows[i].Debit == "" && rows[i].Credit == "" {
				rows[i].Balance = ""
				continue
			}
			net := numfmt.Parse(rows[i].Debit).Sub(numfmt.Parse(rows[i].Credit))
			rows[i].Balance = numfmt.Format(net, false)
		}
	case Untouched:
	}
}

// movementField returns the single movement column of a non-bank ledger
// kind: credit for income sheets, debit for everything else.
func movementField(kind model.SheetKind) string {
	switch kind {
	case model.KindSales, model.KindInterest:
		return "credit"
	default:
		return "debit"
	}
}
