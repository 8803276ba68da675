package colors

import (
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestMethodAndStatus(t *testing.T) {
	saved := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = saved }()

	testCases := []struct {
		description string
		actual      string
		expected    string
	}{
		{"Should color GET cyan", Method("GET"), Cyan("GET")},
		{"Should color PUT yellow", Method("PUT"), Yellow("PUT")},
		{"Should color DELETE red", Method("DELETE"), Red("DELETE")},
		{"Should leave unknown methods alone", Method("OPTIONS"), "OPTIONS"},
		{"Should color 2xx green", Status(201), Green(201)},
		{"Should color 4xx red", Status(404), Red(404)},
	}

	for _, tcase := range testCases {
		t.Run(tcase.description, func(t *testing.T) {
			assert.Equal(t, tcase.expected, tcase.actual)
		})
	}
}
