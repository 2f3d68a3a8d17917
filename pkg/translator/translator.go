package translator

import (
	"fmt"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
)

// Translator resolves symbolic message keys to localized, human-readable
// text. Handlers never hardcode user-facing strings; they go through T.
type Translator struct {
	uni    *ut.UniversalTranslator
	locale ut.Translator
}

// messages maps every symbolic key the API can emit to its English text.
// Positional parameters use the {0}, {1} placeholder syntax.
var messages = map[string]string{
	"auth.errors.invalid_credentials":   "invalid email or password",
	"auth.errors.user_already_exists":   "a user with this email or username already exists",
	"auth.errors.missing_token":         "authorization header is required",
	"auth.errors.malformed_token":       "authorization header format must be 'Bearer <token>'",
	"auth.errors.invalid_token":         "invalid or expired token",
	"auth.success.registration_success": "registration successful",
	"auth.success.login_success":        "login successful",
	"users.user_not_found":              "user not found",
	"users.username_taken":              "username '{0}' is already taken",
	"users.cannot_follow_self":          "you cannot follow yourself",
	"articles.article_not_found":        "article not found",
	"articles.forbidden":                "you are not the author of this article",
	"articles.slug_conflict":            "an article with the same slug was just created, please retry",
	"comments.comment_not_found":        "comment not found",
	"comments.unauthorized_delete":      "you can only delete your own comments",
	"common.validation_failed":          "validation failed",
	"common.internal_error":             "something went wrong",
}

// New builds a Translator with the English locale registered.
func New() (*Translator, error) {
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	locale, ok := uni.GetTranslator("en")
	if !ok {
		return nil, fmt.Errorf("english locale is not registered")
	}

	for key, text := range messages {
		if err := locale.Add(key, text, false); err != nil {
			return nil, fmt.Errorf("failed to register message %s: %w", key, err)
		}
	}

	return &Translator{uni: uni, locale: locale}, nil
}

// T resolves a message key with optional positional parameters. An unknown
// key falls back to the key itself so a missing translation never panics a
// request.
func (t *Translator) T(key string, params ...string) string {
	msg, err := t.locale.T(key, params...)
	if err != nil {
		return key
	}
	return msg
}

// RegisterValidationMessages installs the default English messages for
// validator tags so field errors are rendered through the same locale.
func (t *Translator) RegisterValidationMessages(v *validator.Validate) error {
	return entranslations.RegisterDefaultTranslations(v, t.locale)
}

// Locale exposes the underlying locale translator, used to render
// individual validator field errors.
func (t *Translator) Locale() ut.Translator {
	return t.locale
}
