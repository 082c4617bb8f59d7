package main

import (
	"errors"
	"fmt"
	"os"

	"course-catalog-go/internal/courses"
	log "github.com/sirupsen/logrus"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		var httpErr *courses.HTTPError
		if errors.As(err, &httpErr) {
			fmt.Fprintf(os.Stderr, "%d %s\n%s\n", httpErr.StatusCode, httpErr.StatusText, httpErr.Body)
			os.Exit(2)
		}
		log.Error(err)
		os.Exit(1)
	}
}
