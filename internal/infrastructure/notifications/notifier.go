package notifications

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/OmarEhab007/cargoparts-sub000/domain"
)

// Notifier implements domain.NotificationService by routing OTP codes to the
// channel matching their purpose (SMS for phone verification, email for the
// rest) and admin lifecycle messages to email. Message bodies are bilingual;
// the subject follows the recipient's locale.
type Notifier struct {
	sms    *TwilioSMS
	mailer *SMTPMailer
	logger *slog.Logger
}

// NewNotifier creates the delivery collaborator.
func NewNotifier(sms *TwilioSMS, mailer *SMTPMailer, logger *slog.Logger) *Notifier {
	return &Notifier{sms: sms, mailer: mailer, logger: logger}
}

// SendOTPMessage implements domain.NotificationService.
func (n *Notifier) SendOTPMessage(ctx context.Context, user *domain.User, code string, purpose domain.OTPPurpose) error {
	ttlNote := otpBody(user.Locale, code)
	if purpose == domain.PurposePhoneVerification {
		if user.Phone == "" {
			return fmt.Errorf("user %d has no phone on file", user.ID)
		}
		return n.sms.Send(user.Phone, ttlNote)
	}
	subject := localize(user.Locale,
		"CargoParts verification code",
		"رمز التحقق من كارجو بارتس")
	return n.mailer.Send(user.Email, subject, otpEmailHTML(user.Locale, user.Name, code))
}

// SendAdminWelcome implements domain.NotificationService.
func (n *Notifier) SendAdminWelcome(ctx context.Context, email, name, locale string) error {
	subject := localize(locale,
		"Your CargoParts administrator account",
		"حساب المشرف الخاص بك في كارجو بارتس")
	body := adminEmailHTML(locale, name, localize(locale,
		"An administrator account has been created for you. Sign in with your email to receive a login code.",
		"تم إنشاء حساب مشرف لك. سجّل الدخول ببريدك الإلكتروني لاستلام رمز الدخول."))
	return n.mailer.Send(email, subject, body)
}

// SendPromotionNotice implements domain.NotificationService.
func (n *Notifier) SendPromotionNotice(ctx context.Context, email, name, locale string, role domain.Role) error {
	subject := localize(locale,
		"Your CargoParts role has changed",
		"تم تغيير دورك في كارجو بارتس")
	body := adminEmailHTML(locale, name, localize(locale,
		fmt.Sprintf("Your account has been promoted to %s.", role),
		fmt.Sprintf("تمت ترقية حسابك إلى %s.", role)))
	return n.mailer.Send(email, subject, body)
}

// SendDemotionNotice implements domain.NotificationService.
func (n *Notifier) SendDemotionNotice(ctx context.Context, email, name, locale string) error {
	subject := localize(locale,
		"Your CargoParts role has changed",
		"تم تغيير دورك في كارجو بارتس")
	body := adminEmailHTML(locale, name, localize(locale,
		"Your administrative privileges have been removed.",
		"تمت إزالة صلاحياتك الإدارية."))
	return n.mailer.Send(email, subject, body)
}

func localize(locale, en, ar string) string {
	if locale == "ar" {
		return ar
	}
	return en
}

func otpBody(locale, code string) string {
	return localize(locale,
		fmt.Sprintf("Your CargoParts verification code is %s. Valid for 10 minutes.", code),
		fmt.Sprintf("رمز التحقق الخاص بك في كارجو بارتس هو %s. صالح لمدة ١٠ دقائق.", code))
}

func otpEmailHTML(locale, name, code string) string {
	greeting := localize(locale, fmt.Sprintf("Hello %s,", name), fmt.Sprintf("مرحباً %s،", name))
	dir := localize(locale, "ltr", "rtl")
	return fmt.Sprintf(`<!DOCTYPE html>
<html dir=%q>
<body style="font-family: Arial, sans-serif;">
  <div style="max-width: 520px; margin: 0 auto; padding: 16px;">
    <h2>CargoParts</h2>
    <p>%s</p>
    <div style="font-size: 28px; font-weight: bold; letter-spacing: 4px;">%s</div>
    <p>%s</p>
  </div>
</body>
</html>`, dir, greeting, code,
		localize(locale, "This code expires in 10 minutes.", "تنتهي صلاحية هذا الرمز خلال ١٠ دقائق."))
}

func adminEmailHTML(locale, name, message string) string {
	greeting := localize(locale, fmt.Sprintf("Hello %s,", name), fmt.Sprintf("مرحباً %s،", name))
	dir := localize(locale, "ltr", "rtl")
	return fmt.Sprintf(`<!DOCTYPE html>
<html dir=%q>
<body style="font-family: Arial, sans-serif;">
  <div style="max-width: 520px; margin: 0 auto; padding: 16px;">
    <h2>CargoParts</h2>
    <p>%s</p>
    <p>%s</p>
  </div>
</body>
</html>`, dir, greeting, message)
}

var _ domain.NotificationService = (*Notifier)(nil)
