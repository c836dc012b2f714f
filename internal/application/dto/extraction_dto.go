package dto

// CustomerSearchRequest partial-name query against the customer data folder.
type CustomerSearchRequest struct {
	CustomerName string `json:"customer_name"`
}

// CustomerSuggestion one matching customer folder.
type CustomerSuggestion struct {
	FolderName    string `json:"folder_name"`
	FullPath      string `json:"full_path"`
	PersonName    string `json:"person_name"`
	AadhaarNumber string `json:"aadhaar_number"`
	DisplayText   string `json:"display_text"` // "Customer Name - 123456789012"
}

// ProcessFolderRequest asks for extraction from a selected customer folder.
type ProcessFolderRequest struct {
	FolderPath string `json:"folder_path"`
}

// ExtractionResponse the reconciled customer record, plus notes about any
// dropped fields so the operator can review before billing.
type ExtractionResponse struct {
	Name          string   `json:"name"`
	AadhaarNumber string   `json:"aadhaar_number"`
	Address       string   `json:"address"`
	MobileNumber  string   `json:"mobile_number"`
	DateOfBirth   string   `json:"date_of_birth,omitempty"`
	Gender        string   `json:"gender,omitempty"`
	ParentName    string   `json:"parent_name,omitempty"`
	Notes         []string `json:"notes,omitempty"`
}
