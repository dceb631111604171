package registrar

// AuthCodeCheck is the registrar's inbound transfer auth code response
type AuthCodeCheck struct {
	Success       bool   `json:"success"`
	AuthCodeValid bool   `json:"auth_code_valid"`
	Status        string `json:"status"`
}
