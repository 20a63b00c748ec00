package utils

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

// TimeTrack logs the time elapsed since start. Meant to be deferred.
func TimeTrack(start time.Time, name string) {
	log.Debugf("%s took %s", name, time.Since(start))
}

// Plural returns the singular or plural form of noun depending on n.
func Plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
