package employmenttype

type CreateEmploymentTypeRequest struct {
	Name          string `json:"name" validate:"required,max=100"`
	Description   string `json:"description" validate:"max=500"`
	PayCadence    string `json:"payCadence" validate:"required,oneof=daily monthly"`
	ContractTerms string `json:"contractTerms" validate:"max=2000"`
}

type EmploymentTypeResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	PayCadence    string `json:"payCadence"`
	ContractTerms string `json:"contractTerms,omitempty"`
	CreatedAt     string `json:"createdAt"`
}
