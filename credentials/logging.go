// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package credentials

import "github.com/sirupsen/logrus"

// logger is the package-wide diagnostic sink, mirroring typedesc.SetLogger.
var logger = logrus.StandardLogger()

// SetLogger overrides the logger used for internal reconciliation
// diagnostics. Passing nil restores the standard logger.
func SetLogger(l *logrus.Logger) {
	if l == nil {
		logger = logrus.StandardLogger()
		return
	}
	logger = l
}
