/*
Copyright the jwkcore contributors.

SPDX-License-Identifier: Apache-2.0
*/

package jwk

import (
	"log"
	"os"
)

var logger = log.New(os.Stderr, " [jwkcore/jwk] ", log.Ldate|log.Ltime|log.LUTC)
