package filters

import (
	"fmt"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/jengzang/wildlife-bi-go/internal/region"
)

// rules are the custom binding tags used by the request models
var rules = map[string]validator.Func{
	"prefecture": func(fl validator.FieldLevel) bool {
		return region.IsPrefecture(fl.Field().String())
	},
	"hokkaidopart": func(fl validator.FieldLevel) bool {
		return region.IsHokkaidoPart(fl.Field().String())
	},
	"species": func(fl validator.FieldLevel) bool {
		return region.IsSpecies(fl.Field().String())
	},
}

// RegisterRules adds the custom tags to v
func RegisterRules(v *validator.Validate) error {
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("failed to register validation %s: %w", tag, err)
		}
	}
	return nil
}

// RegisterBindingRules adds the custom tags to gin's default validator
func RegisterBindingRules() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding engine %T", binding.Validator.Engine())
	}
	return RegisterRules(v)
}
