package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

const tagRequiredForProvider = "required_for_provider"

func newValidator() (*validator.Validate, ut.Translator, error) {
	validate := validator.New()

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, nil, fmt.Errorf("failed to register default translations: %w", err)
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	validate.RegisterStructValidation(validateEngine, EngineConfig{})
	if err := validate.RegisterTranslation(tagRequiredForProvider, trans, func(ut ut.Translator) error {
		return ut.Add(tagRequiredForProvider, "{0} is required when engine.provider is {1}", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T(tagRequiredForProvider, strings.TrimPrefix(fe.Namespace(), "Config."), fe.Param())
		return t
	}); err != nil {
		return nil, nil, fmt.Errorf("failed to register %s translation: %w", tagRequiredForProvider, err)
	}

	return validate, trans, nil
}

// validateEngine checks that the selected provider has its endpoint set.
func validateEngine(sl validator.StructLevel) {
	cfg := sl.Current().Interface().(EngineConfig)

	switch cfg.Provider {
	case ProviderLambda:
		if cfg.Lambda.FunctionName == "" {
			sl.ReportError(cfg.Lambda.FunctionName, "lambda.function_name", "FunctionName", tagRequiredForProvider, ProviderLambda)
		}
	case ProviderHTTP:
		if cfg.HTTP.BaseURL == "" {
			sl.ReportError(cfg.HTTP.BaseURL, "http.base_url", "BaseURL", tagRequiredForProvider, ProviderHTTP)
		}
	case ProviderOpenAI:
		if cfg.OpenAI.APIKey == "" {
			sl.ReportError(cfg.OpenAI.APIKey, "openai.api_key", "APIKey", tagRequiredForProvider, ProviderOpenAI)
		}
	}
}
