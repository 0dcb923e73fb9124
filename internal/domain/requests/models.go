package requests

const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

var Statuses = []string{StatusPending, StatusApproved, StatusRejected}

type Item struct {
	Name string `json:"name"`
	Qty  int    `json:"qty"`
}

// Request is an employee's supply or leave request. EmployeeEmail is the
// username of the account that created it.
type Request struct {
	ID            int64  `json:"id"`
	Type          string `json:"type"`
	Items         []Item `json:"items"`
	EmployeeEmail string `json:"employeeEmail"`
	Date          string `json:"date"`
	Status        string `json:"status"`
}

type NewRequest struct {
	Type  string
	Items []Item
}
