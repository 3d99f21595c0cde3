// Package rule wraps go-playground/validator for struct and field
// validation, reusing gin's engine where available.
package rule

import (
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	inst *validator.Validate
	once sync.Once
)

// initValidator reuses gin's validator engine when present, otherwise
// creates a fresh one. The tag name is "rule" either way.
func initValidator() {
	if engine := binding.Validator.Engine(); engine != nil {
		if v, ok := engine.(*validator.Validate); ok {
			inst = v
			inst.SetTagName("rule")

			return
		}
	}

	inst = validator.New()
	inst.SetTagName("rule")
}

func lazyInit() {
	once.Do(initValidator)
}

// Engine returns the global *validator.Validate.
func Engine() *validator.Validate {
	lazyInit()

	return inst
}

// RegisterValidation proxies RegisterValidation on the global engine.
func RegisterValidation(tag string, fn validator.Func, opts ...bool) error {
	lazyInit()

	return inst.RegisterValidation(tag, fn, opts...)
}

// ValidateStruct runs full struct validation.
func ValidateStruct(s any) error {
	lazyInit()

	return inst.Struct(s)
}

// ValidateVar validates a single value against a tag expression such as
// "required,uuid4" or "min=1,max=100".
func ValidateVar(field any, tag string) error {
	lazyInit()

	return inst.Var(field, tag)
}
