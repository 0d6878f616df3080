package models

// AdminDashboardStats is the rollup shown on the admin dashboard
type AdminDashboardStats struct {
	TotalMembers            int64   `json:"totalMembers"`
	ApprovedMembers         int64   `json:"approvedMembers"`
	PendingMembers          int64   `json:"pendingMembers"`
	ActiveChitGroups        int64   `json:"activeChitGroups"`
	TotalTransactionsAmount float64 `json:"totalTransactionsAmount"`
	RecentMembers           []*User `json:"recentMembers"`
}

// MemberDashboardStats is the rollup shown on a member's dashboard
type MemberDashboardStats struct {
	ActiveChitGroups int64      `json:"activeChitGroups"`
	TotalContributed float64    `json:"totalContributed"`
	TotalReceived    float64    `json:"totalReceived"`
	PendingPayments  float64    `json:"pendingPayments"`
	AccountStatus    UserStatus `json:"accountStatus"`
}

// Pagination describes the page window of a paged listing
type Pagination struct {
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int   `json:"totalPages"`
	TotalItems   int64 `json:"totalItems"`
	ItemsPerPage int   `json:"itemsPerPage"`
}
