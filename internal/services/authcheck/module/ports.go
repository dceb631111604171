package module

import dom "xferlock/internal/services/authcheck/domain"

// Ports holds the ports exposed by the authcheck module
type Ports struct {
	Checker dom.CheckerPort
}
