package i18n

// Verdict message keys
const (
	MsgDuplicate       = "transfer.duplicate"
	MsgInvalidDomain   = "transfer.invalid_domain"
	MsgMissingAuthCode = "transfer.missing_auth_code"
	MsgChecking        = "transfer.checking"
	MsgUnlocked        = "transfer.unlocked"
	MsgUnknownError    = "transfer.unknown_error"
)

// Availability notice keys; {0} is the domain, {1} the site when present
const (
	NoticeAvailable                 = "availability.available"
	NoticeTransferrable             = "availability.transferrable"
	NoticeLocked                    = "availability.locked"
	NoticeTransferPending           = "availability.transfer_pending"
	NoticeTransferPendingSameUser   = "availability.transfer_pending_same_user"
	NoticeRecentlyRegistered        = "availability.recent_registration_lock"
	NoticeServerTransferProhibited  = "availability.server_transfer_prohibited"
	NoticeMapped                    = "availability.mapped"
	NoticeMappedSameSite            = "availability.mapped_same_site"
	NoticeRegisteredSameSite        = "availability.registered_same_site"
	NoticeRegisteredSameSiteNamed   = "availability.registered_same_site_named"
	NoticeRegisteredOtherSite       = "availability.registered_other_site_same_user"
	NoticeTLDNotSupported           = "availability.tld_not_supported"
	NoticeTLDNotSupportedTemporary  = "availability.tld_not_supported_temporarily"
	NoticeInvalidTLD                = "availability.invalid_tld"
	NoticeNotRegistrable            = "availability.not_registrable"
	NoticeForbidden                 = "availability.forbidden"
	NoticeInRedemption              = "availability.in_redemption"
	NoticeMaintenance               = "availability.maintenance"
	NoticePurchasesDisabled         = "availability.purchases_disabled"
	NoticeDotBlogSubdomain          = "availability.dotblog_subdomain"
	NoticeUnknownActive             = "availability.unknown_active"
	NoticeAvailableNotTransferrable = "availability.available_not_transferrable"
)

// English is the reference catalog
var English = map[string]string{
	MsgDuplicate:       "This domain has already been entered.",
	MsgInvalidDomain:   "Please enter a valid domain name.",
	MsgMissingAuthCode: "Please enter a valid authentication code.",
	MsgChecking:        "Checking domain lock status.",
	MsgUnlocked:        "This domain is unlocked and ready to be transferred.",
	MsgUnknownError:    "An unknown error occurred while checking the domain transferability. Please try again or contact support",

	NoticeAvailable:                 "{0} is available for registration.",
	NoticeAvailableNotTransferrable: "{0} is not registered yet, so it cannot be transferred. You can register it instead.",
	NoticeTransferrable:             "The authentication code for {0} was not accepted. Check the code with your current registrar and try again.",
	NoticeLocked:                    "{0} is locked at its current registrar. Unlock it there and try again.",
	NoticeTransferPending:           "A transfer for {0} is already in progress.",
	NoticeTransferPendingSameUser:   "{0} is already being transferred to your account.",
	NoticeRecentlyRegistered:        "{0} was registered or transferred in the last 60 days and cannot be transferred yet.",
	NoticeServerTransferProhibited:  "The registry has prohibited transfers for {0}. Contact your current registrar.",
	NoticeMapped:                    "{0} is already connected to a site.",
	NoticeMappedSameSite:            "{0} is already connected to this site.",
	NoticeRegisteredSameSite:        "{0} is already registered on this site.",
	NoticeRegisteredSameSiteNamed:   "{0} is already registered on {1}.",
	NoticeRegisteredOtherSite:       "{0} is already registered on another site you own.",
	NoticeTLDNotSupported:           "Transfers are not supported for {0}.",
	NoticeTLDNotSupportedTemporary:  "Transfers for {0} are temporarily unavailable. Please try again later.",
	NoticeInvalidTLD:                "{0} does not end in a known top-level domain.",
	NoticeNotRegistrable:            "{0} cannot be registered or transferred.",
	NoticeForbidden:                 "{0} cannot be transferred here.",
	NoticeInRedemption:              "{0} is in its redemption period and must be renewed at the current registrar first.",
	NoticeMaintenance:               "Domain transfers are under maintenance. Please try again later.",
	NoticePurchasesDisabled:         "Domain purchases are temporarily disabled. Please try again later.",
	NoticeDotBlogSubdomain:          "{0} is a .blog subdomain and cannot be transferred.",
	NoticeUnknownActive:             "{0} is already active and cannot be transferred right now.",
}

// Spanish covers the same keys; missing ones fall back to English
var Spanish = map[string]string{
	MsgDuplicate:       "Este dominio ya se ha introducido.",
	MsgInvalidDomain:   "Introduce un nombre de dominio válido.",
	MsgMissingAuthCode: "Introduce un código de autorización válido.",
	MsgChecking:        "Comprobando el estado de bloqueo del dominio.",
	MsgUnlocked:        "Este dominio está desbloqueado y listo para transferirse.",
	MsgUnknownError:    "Se produjo un error desconocido al comprobar si el dominio se puede transferir. Inténtalo de nuevo o contacta con soporte",

	NoticeAvailable:                 "{0} está disponible para registrarse.",
	NoticeAvailableNotTransferrable: "{0} aún no está registrado, así que no se puede transferir. Puedes registrarlo.",
	NoticeTransferrable:             "No se aceptó el código de autorización de {0}. Verifícalo con tu registrador actual e inténtalo de nuevo.",
	NoticeLocked:                    "{0} está bloqueado en su registrador actual. Desbloquéalo allí e inténtalo de nuevo.",
	NoticeTransferPending:           "Ya hay una transferencia en curso para {0}.",
	NoticeRecentlyRegistered:        "{0} se registró o transfirió en los últimos 60 días y todavía no se puede transferir.",
	NoticeServerTransferProhibited:  "El registro ha prohibido las transferencias de {0}. Contacta con tu registrador actual.",
	NoticeTLDNotSupported:           "No se admiten transferencias para {0}.",
	NoticeMaintenance:               "Las transferencias de dominios están en mantenimiento. Inténtalo más tarde.",
}
