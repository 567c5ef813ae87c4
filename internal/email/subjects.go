package email

const (
	subjectReplyAlertFmt = "Reply from %s needs review"
	subjectConversionFmt = "%s converted"
)
