// Copyright 2025 Dimitrij Drus <dadrus@gmx.de>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package logger

const defaultMaxIDLength = 128

type config struct {
	header      string
	maxIDLength int
}

func (c config) maxLength() int {
	if c.maxIDLength <= 0 {
		return defaultMaxIDLength
	}

	return c.maxIDLength
}

type Option func(*config)

// WithRequestIDHeader sets the header the request id is read from and written to.
func WithRequestIDHeader(name string) Option {
	return func(c *config) {
		if len(name) != 0 {
			c.header = name
		}
	}
}

// WithMaxRequestIDLength makes longer incoming ids being replaced by generated ones.
func WithMaxRequestIDLength(length int) Option {
	return func(c *config) {
		c.maxIDLength = length
	}
}
