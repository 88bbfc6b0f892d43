package domain

// AuditEventType defines the type of audit event
type AuditEventType string

const (
	// Password reset events
	ResetRequestedEvent     AuditEventType = "PASSWORD_RESET_REQUESTED"
	ResetCompletedEvent     AuditEventType = "PASSWORD_RESET_COMPLETED"
	ResetOTPVerifiedEvent   AuditEventType = "RESET_OTP_VERIFIED"
	ResetOTPFailureEvent    AuditEventType = "RESET_OTP_VERIFICATION_FAILED"
	ResetUnknownPhoneEvent  AuditEventType = "PASSWORD_RESET_UNKNOWN_PHONE"

	// SMS delivery events
	SMSSubmittedEvent        AuditEventType = "SMS_SUBMITTED"
	SMSSubmitFailedEvent     AuditEventType = "SMS_SUBMIT_FAILED"
	SMSReportMatchedEvent    AuditEventType = "SMS_REPORT_MATCHED"
	SMSReportUnmatchedEvent  AuditEventType = "SMS_REPORT_UNMATCHED"
)
