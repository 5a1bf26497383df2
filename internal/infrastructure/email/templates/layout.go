// Package templates provides HTML email templates.
package templates

import "fmt"

// EmailLayoutProps holds the content for the base email layout
type EmailLayoutProps struct {
	Content string
}

// GetEmailLayout wraps content in the base HTML email layout
func GetEmailLayout(props EmailLayoutProps) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="margin:0;padding:0;background-color:#f4f4f5;font-family:Helvetica,Arial,sans-serif;">
  <table role="presentation" width="100%%" cellpadding="0" cellspacing="0">
    <tr>
      <td align="center" style="padding:32px 16px;">
        <table role="presentation" width="600" cellpadding="0" cellspacing="0" style="background-color:#ffffff;border-radius:8px;overflow:hidden;">
          <tr>
            <td style="padding:24px 32px;background-color:#18181b;">
              <span style="color:#ffffff;font-size:18px;font-weight:bold;">AssetGrid</span>
            </td>
          </tr>
          <tr>
            <td style="padding:32px;color:#27272a;font-size:15px;line-height:1.6;">
              %s
            </td>
          </tr>
          <tr>
            <td style="padding:16px 32px;background-color:#f4f4f5;color:#71717a;font-size:12px;">
              You are receiving this message because batch failure alerts are enabled for your workspace.
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`, props.Content)
}
