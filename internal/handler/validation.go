package handler

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// routePattern accepts lowercase slug-style routes, with or without a
// leading slash: "about", "/wines/reserve"
var routePattern = regexp.MustCompile(`^/?[a-z0-9\-]+(/[a-z0-9\-]+)*$`)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("pageroute", func(fl validator.FieldLevel) bool { //nolint:errcheck
			return routePattern.MatchString(fl.Field().String())
		})
	}
}
