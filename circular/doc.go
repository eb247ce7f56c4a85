// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package circular provides NextExp2, a ring-buffer sizing helper used by
// queue to round a requested FIFO capacity up to a power of 2 so index
// wraparound is a bitmask rather than a modulo.
package circular
