package module

import (
	acdom "xferlock/internal/services/authcheck/domain"
	"xferlock/internal/services/transfer/service"
)

// Ports declares the injected checker port this module requires
type Ports struct {
	Checker acdom.CheckerPort
}

// Exposed is what the module offers to other modules
type Exposed struct {
	Validator *service.Validator
	Sessions  *service.Registry
}
