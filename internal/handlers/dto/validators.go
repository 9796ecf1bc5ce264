package dto

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/rafabene/socialnet-backend/internal/domain/entities"
)

var (
	registerOnce sync.Once
	registerErr  error
)

// RegisterValidators adiciona as regras customizadas ao validator do Gin
func RegisterValidators() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = errors.New("gin validator engine is not go-playground/validator")
			return
		}
		if err := v.RegisterValidation("username", validateUsername); err != nil {
			registerErr = fmt.Errorf("register username validation: %w", err)
		}
	})
	return registerErr
}

func validateUsername(fl validator.FieldLevel) bool {
	return entities.ValidateUsername(fl.Field().String())
}
