// Copyright 2026 The Unitypack Authors
// SPDX-License-Identifier: Apache-2.0

package unitypack

import "gopkg.in/yaml.v3"

// metaHeader is the slice of a Unity .meta sidecar this package cares
// about. Meta files are YAML; everything beyond the guid field is
// import-settings content and stays opaque.
type metaHeader struct {
	GUID string `yaml:"guid"`
}

// metaGUID parses the guid field from asset.meta bytes. Returns the
// empty string when the sidecar does not parse as YAML or carries no
// guid — the sidecar is still written byte-exact either way, this is
// advisory only.
func metaGUID(content []byte) string {
	var header metaHeader
	if err := yaml.Unmarshal(content, &header); err != nil {
		return ""
	}
	return header.GUID
}
