package portal

import (
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/jrsteele09/school-portal/internal/errors"
	"github.com/jrsteele09/school-portal/sessions"
)

var (
	structValidator *validator.Validate
	translator      ut.Translator

	// custom validation tags
	notBlankTag = "notblank"
	roleTag     = "role"
)

func init() {
	structValidator = validator.New()

	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(structValidator, translator)

	// Report fields by their JSON names.
	structValidator.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = structValidator.RegisterValidation(notBlankTag, func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = structValidator.RegisterValidation(roleTag, func(fl validator.FieldLevel) bool {
		return sessions.RoleType(fl.Field().String()).Valid()
	})
	registerCustomTranslation(notBlankTag, "{0} must not be blank")
	registerCustomTranslation(roleTag, "{0} must be one of eleve, prof, parent, admin")
}

func registerCustomTranslation(tag, text string) {
	_ = structValidator.RegisterTranslation(tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			msg, _ := t.T(tag, fe.Field())
			return msg
		})
}

// validate checks a request payload before it is sent and reports the first
// failures as ErrInvalidRequest.
func validate(v any) error {
	err := structValidator.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errors.Wrapf(errors.ErrInvalidRequest, "%v", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fe.Translate(translator))
	}
	return errors.Wrapf(errors.ErrInvalidRequest, "%s", strings.Join(msgs, "; "))
}
