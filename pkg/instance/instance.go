package instance

import "os"

// GetID returns an identifier for this process, preferring an explicit
// override, then the platform dyno name, then the container hostname.
func GetID() string {
	for _, key := range []string{"LIVESTOCKMART_INSTANCE_ID", "DYNO", "HOSTNAME"} {
		if id := os.Getenv(key); id != "" {
			return id
		}
	}
	return "api-0"
}
