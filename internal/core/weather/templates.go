package weather

import (
	_ "embed"
	"sync"

	"weathernotify.app/pkg/payload"
)

var (
	//go:embed templates/current.json
	currentTemplateJSON []byte

	//go:embed templates/forecast.json
	forecastTemplateJSON []byte
)

var (
	currentTemplate  = sync.OnceValue(func() payload.Node { return mustDecodeTemplate(currentTemplateJSON) })
	forecastTemplate = sync.OnceValue(func() payload.Node { return mustDecodeTemplate(forecastTemplateJSON) })
)

// CurrentTemplate returns the reference shape of a current-weather payload
func CurrentTemplate() payload.Node {
	return currentTemplate()
}

// ForecastTemplate returns the reference shape of a forecast payload
func ForecastTemplate() payload.Node {
	return forecastTemplate()
}

// The templates are compiled into the binary, so a decode failure is a build defect.
func mustDecodeTemplate(raw []byte) payload.Node {
	node, err := payload.Decode(raw)
	if err != nil {
		panic("weather: invalid embedded template: " + err.Error())
	}
	return node
}
