package configs

import "reflect"

// Configurable types are filled from the config path returned by ConfigExpr.
type Configurable interface {
	ConfigExpr() string
}

var configurableType = reflect.TypeFor[Configurable]()
