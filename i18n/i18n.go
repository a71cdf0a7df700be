// Package i18n provides a minimal message catalog for API error codes and
// notification texts. English is the default; French is the fallback
// catalog for the same codes.
package i18n

import (
	"context"
	"fmt"
	"strings"
)

// DefaultLang is used when no preference can be detected.
const DefaultLang = "en"

type ctxKey struct{}

// WithLang stores the language preference in the context.
func WithLang(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, ctxKey{}, normalize(lang))
}

// FromContext returns the language stored in the context, or DefaultLang.
func FromContext(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKey{}).(string); ok && v != "" {
		return v
	}
	return DefaultLang
}

// DetectLanguage picks a supported language from an Accept-Language header.
func DetectLanguage(acceptLanguage string) string {
	for _, part := range strings.Split(acceptLanguage, ",") {
		tag := strings.ToLower(strings.TrimSpace(strings.SplitN(part, ";", 2)[0]))
		switch {
		case strings.HasPrefix(tag, "fr"):
			return "fr"
		case strings.HasPrefix(tag, "en"):
			return "en"
		}
	}
	return DefaultLang
}

func normalize(lang string) string {
	lang = strings.ToLower(lang)
	if i := strings.IndexByte(lang, '-'); i > 0 {
		lang = lang[:i]
	}
	if _, ok := catalogs[lang]; !ok {
		return DefaultLang
	}
	return lang
}

// T returns the translation for code in lang. Unknown languages fall back
// to the default catalog; unknown codes fall back to the code itself.
func T(lang, code string) string {
	cat, ok := catalogs[normalize(lang)]
	if !ok {
		cat = catalogs[DefaultLang]
	}
	if msg, ok := cat[code]; ok {
		return msg
	}
	if msg, ok := catalogs[DefaultLang][code]; ok {
		return msg
	}
	return code
}

// Tf returns the translation formatted with args.
func Tf(lang, code string, args ...any) string {
	return fmt.Sprintf(T(lang, code), args...)
}

var catalogs = map[string]map[string]string{
	"en": {
		// validation
		"required":         "Required",
		"must_be_positive": "Must be positive",
		"out_of_range":     "Out of range",
		"invalid_email":    "Invalid email address",

		// api errors
		"not_found":           "Not found.",
		"already_registered":  "You are already registered for this formation.",
		"no_longer_pending":   "Record not found or already processed.",
		"forbidden":           "You are not allowed to perform this action.",
		"outside_structure":   "You cannot register for formations outside your structure.",
		"invalid_credentials": "Invalid email or password.",
		"account_not_active":  "Your account has not been validated yet.",
		"email_taken":         "An account with this email or username already exists.",

		// notifications
		"notif_account_approved":     "Your account has been validated. Welcome to TMS!",
		"notif_account_rejected":     "Your account request has been refused.",
		"notif_enrollment_validated": "Your registration for '%s' has been validated.",
		"notif_enrollment_rejected":  "Your registration for '%s' has been refused.",
		"notif_enrollment_cancelled": "Your registration for '%s' has been cancelled.",
	},
	"fr": {
		"required":         "Requis",
		"must_be_positive": "Doit être positif",
		"out_of_range":     "Hors limites",
		"invalid_email":    "Adresse e-mail invalide",

		"not_found":           "Introuvable.",
		"already_registered":  "Vous êtes déjà inscrit à cette formation.",
		"no_longer_pending":   "Enregistrement introuvable ou déjà traité.",
		"forbidden":           "Vous n'êtes pas autorisé à effectuer cette action.",
		"outside_structure":   "Vous ne pouvez pas vous inscrire aux formations hors de votre structure.",
		"invalid_credentials": "E-mail ou mot de passe invalide.",
		"account_not_active":  "Votre compte n'a pas encore été validé.",
		"email_taken":         "Un compte avec cet e-mail ou ce nom d'utilisateur existe déjà.",

		"notif_account_approved":     "Votre compte a été validé. Bienvenue sur TMS !",
		"notif_account_rejected":     "Votre demande de compte a été refusée.",
		"notif_enrollment_validated": "Votre inscription à « %s » a été validée.",
		"notif_enrollment_rejected":  "Votre inscription à « %s » a été refusée.",
		"notif_enrollment_cancelled": "Votre inscription à « %s » a été annulée.",
	},
}
