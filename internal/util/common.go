package util

import (
	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
)

func ContinueOrFatal(err error) {
	if err != nil {
		logrus.Fatal(err)
	}
}

// PrettyJSON renders v the way the CLI prints results.
func PrettyJSON(v any) (string, error) {
	payload, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}

	return string(payload), nil
}
