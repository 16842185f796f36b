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

// Package httpx contains helpers for values found in HTTP requests.
package httpx

import (
	"net"
	"strconv"
	"strings"
)

// IPFromHostPort returns the host part of hp, e.g. of a remote address. It is
// empty if hp has no port.
func IPFromHostPort(hp string) string {
	host, _, err := net.SplitHostPort(hp)
	if err != nil {
		return ""
	}

	return strings.TrimSuffix(strings.TrimPrefix(host, "["), "]")
}

// HostPort splits a Host header value. The port is -1 if hp has none or it is
// not a valid port number. IPv6 hosts are returned without brackets.
func HostPort(hp string) (string, int) {
	hasPort := false

	if strings.HasPrefix(hp, "[") {
		end := strings.LastIndex(hp, "]")
		if end < 0 {
			return "", -1
		}

		hasPort = strings.Contains(hp[end:], ":")
		if !hasPort {
			return hp[1:end], -1
		}
	} else if hasPort = strings.Contains(hp, ":"); !hasPort {
		return hp, -1
	}

	host, portStr, err := net.SplitHostPort(hp)
	if err != nil {
		return host, -1
	}

	port, err := strconv.ParseUint(portStr, 10, 16)
	if err != nil {
		return host, -1
	}

	return host, int(port)
}
