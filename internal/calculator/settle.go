package calculator

import "github.com/mmynk/warikan/internal/models"

// MemberBalance is one member's position after a bill has been paid.
type MemberBalance struct {
	Member     models.Member
	Paid       int64 // Amount handed over at the register
	Owed       int64 // Rounded share from the breakdown
	NetBalance int64 // Paid - Owed; positive = is owed money, negative = owes money
}

// Transfer is a payment from one member to another.
type Transfer struct {
	From   models.Member // Member who owes
	To     models.Member // Member who is owed
	Amount int64
}

// Balances pairs each share of b with what the member actually paid.
// paid is keyed by member ID; members missing from it paid nothing.
func Balances(b *Breakdown, paid map[int]int64) []MemberBalance {
	balances := make([]MemberBalance, len(b.Shares))
	for i, s := range b.Shares {
		balances[i] = MemberBalance{
			Member: s.Member,
			Paid:   paid[s.Member.ID],
			Owed:   s.AmountOwed,
		}
		balances[i].NetBalance = balances[i].Paid - balances[i].Owed
	}
	return balances
}

// Settle returns the transfers that clear every balance.
//
// Algorithm:
//   - net balance = paid - owed (rounded shares)
//   - creditors (net > 0) and debtors (net < 0) are kept in member order
//   - the first open debtor pays the first open creditor the smaller of the two
//     outstanding amounts, and whichever side reaches zero is skipped
//
// Amounts are whole currency units, so there is no floating point noise to
// filter. When paid does not sum to the rounded shares, the leftover stays
// with the last creditor or debtor.
func Settle(b *Breakdown, paid map[int]int64) []Transfer {
	balances := Balances(b, paid)

	var creditors, debtors []MemberBalance
	for _, bal := range balances {
		if bal.NetBalance > 0 {
			creditors = append(creditors, bal)
		} else if bal.NetBalance < 0 {
			bal.NetBalance = -bal.NetBalance
			debtors = append(debtors, bal)
		}
	}

	var transfers []Transfer
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		amount := min(debtors[i].NetBalance, creditors[j].NetBalance)
		transfers = append(transfers, Transfer{
			From:   debtors[i].Member,
			To:     creditors[j].Member,
			Amount: amount,
		})

		debtors[i].NetBalance -= amount
		creditors[j].NetBalance -= amount
		if debtors[i].NetBalance == 0 {
			i++
		}
		if creditors[j].NetBalance == 0 {
			j++
		}
	}

	return transfers
}

// SinglePayer builds the paid map for the common case of one member paying
// the whole bill. The payer is credited with b.Total, so for an Incomplete
// breakdown the balances do not net to zero; callers settle only complete
// breakdowns.
func SinglePayer(b *Breakdown, payerID int) map[int]int64 {
	return map[int]int64{payerID: b.Total}
}
