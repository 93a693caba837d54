package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type GrantAdminRequest struct {
	Address string `json:"address"`
}

type RevokeAdminRequest struct {
	Address string `json:"address"`
}

type AdminResponse struct {
	Address       string `json:"address"`
	Administrator bool   `json:"administrator"`
	GrantedBy     string `json:"granted_by,omitempty"`
}
