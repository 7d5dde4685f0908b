package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	StagingPrefix = "staging/"
	PhotoPrefix   = "reservation-photos/"
)

// PhotoKeys is the pair of object keys one photo passes through: it is uploaded to Staging
// and promoted to Final once the reservation row is written.
type PhotoKeys struct {
	Staging string
	Final   string
}

// GeneratePhotoKeys names a photo by upload time and a fixed suffix ("front", "closed").
// The short random token keeps two submissions within the same millisecond apart.
func GeneratePhotoKeys(now time.Time, suffix string) PhotoKeys {
	token := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	name := fmt.Sprintf("%d_%s_%s", now.UnixMilli(), token, suffix)
	return PhotoKeys{
		Staging: StagingPrefix + name,
		Final:   PhotoPrefix + name,
	}
}
