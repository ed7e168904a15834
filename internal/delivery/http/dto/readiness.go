package dto

type ReadinessCalculationRequest struct {
	JobRoleID    string `json:"job_role_id" validate:"required,uuid"`
	CompanyLevel string `json:"company_level" validate:"omitempty,oneof=startup corporate leading"`
}
