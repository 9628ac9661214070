package http

import (
	"sync"

	"damai-site/services/content/internal/entity"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidators adds the custom binding rules used by request structs.
// Safe to call more than once.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("mediatype", func(fl validator.FieldLevel) bool {
			return entity.MediaType(fl.Field().String()).Valid()
		})
	})
}
