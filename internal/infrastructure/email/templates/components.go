package templates

import "fmt"

// BatchFailureEmailProps holds the content for the batch failure alert email
type BatchFailureEmailProps struct {
	TenantID   string
	Action     string
	TargetSize int
	Reason     string
}

// GetBatchFailureContent builds the body for the batch failure alert email
func GetBatchFailureContent(props BatchFailureEmailProps) string {
	return fmt.Sprintf(`<h2 style="margin:0 0 16px;font-size:20px;">Bulk action failed</h2>
<p>A bulk <strong>%s</strong> targeting %d item(s) failed for workspace <strong>%s</strong>.</p>
<p style="padding:12px;background-color:#fef2f2;border-radius:6px;color:#991b1b;">%s</p>
<p>The operator's selection was preserved; the action can be retried from the dashboard.</p>`,
		props.Action, props.TargetSize, props.TenantID, props.Reason)
}
