// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package typedesc

import "github.com/sirupsen/logrus"

// logger is the package-wide diagnostic sink. It is never consulted for
// control flow and never produces a user-facing message; it exists purely
// so a host program can observe decode activity the way saferwall/pe's
// File.logger observes anomalous-but-survivable parse events.
var logger = logrus.StandardLogger()

// SetLogger overrides the logger used for internal decode diagnostics.
// Passing nil restores the standard logger.
func SetLogger(l *logrus.Logger) {
	if l == nil {
		logger = logrus.StandardLogger()
		return
	}
	logger = l
}
