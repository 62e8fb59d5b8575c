// utils/http.go
package utils

import (
	"net/http"
	"time"
)

var HTTPClient = &http.Client{
	Timeout: 60 * time.Second, // generous: AI step generation can be slow
}
