/*
 * GraphCore
 *
 * Copyright 2026 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package codec

import (
	"fmt"

	"github.com/krotik/graphcore/graph/util"
)

func malformed(format string, args ...interface{}) error {
	return &util.GraphError{Type: util.ErrMalformedSnapshot, Detail: fmt.Sprintf(format, args...)}
}
