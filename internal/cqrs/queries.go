package cqrs

// ---------- Bill queries ----------

// ListBillsQuery fetches all bills belonging to a user.
type ListBillsQuery struct {
	UserID string
}

// GetBillQuery fetches a single bill by uuid, scoped to the owning user.
type GetBillQuery struct {
	UUID   string
	UserID string
}

// ---------- Transaction queries ----------

// GetPendingTransactionQuery fetches a single pending transaction by uuid,
// scoped to transactions whose sender bill belongs to the requesting user.
type GetPendingTransactionQuery struct {
	UUID   string
	UserID string
}

// ListTransactionsQuery fetches one page of confirmed transactions where the
// user is either sender or recipient.
type ListTransactionsQuery struct {
	UserID  string
	Page    int
	PerPage int
}

// Skip returns the row offset for the requested page.
func (q ListTransactionsQuery) Skip() int {
	page := q.Page
	if page < 1 {
		page = 1
	}
	return (page - 1) * q.Take()
}

// Take returns the page size, clamped to [1, 50].
func (q ListTransactionsQuery) Take() int {
	if q.PerPage < 1 {
		return 10
	}
	if q.PerPage > 50 {
		return 50
	}
	return q.PerPage
}
