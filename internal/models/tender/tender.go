package tender

const (
	StatusOpen      = "OPEN"
	StatusEvaluated = "EVALUATED"
)

type TenderRequest struct {
	Title       string             `json:"title" validate:"required"`
	Description string             `json:"description" validate:"required"`
	Criteria    map[string]float64 `json:"criteria" validate:"required"`
	Deadline    string             `json:"deadline" validate:"required"`
}

type Tender struct {
	TenderId     string             `json:"tender_id" firestore:"tender_id"`
	Title        string             `json:"title" firestore:"title"`
	Description  string             `json:"description" firestore:"description"`
	Criteria     map[string]float64 `json:"criteria" firestore:"criteria"`
	Deadline     string             `json:"deadline" firestore:"deadline"`
	CriteriaHash string             `json:"criteria_hash" firestore:"criteria_hash"`
	CreatedAt    string             `json:"created_at" firestore:"created_at"`
	Status       string             `json:"status" firestore:"status"`
}

type TenderResponse struct {
	TenderId     string `json:"tender_id"`
	TxId         string `json:"tx_id"`
	CriteriaHash string `json:"criteria_hash"`
}

type TenderListResponse struct {
	Tenders []Tender `json:"tenders"`
}
