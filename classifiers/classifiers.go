// Package classifiers provides the trove classifier vocabulary used by
// package indexes, plus license extraction from License classifiers.
package classifiers

import (
	"strings"

	"github.com/github/go-spdx/v2/spdxexp"
)

// Valid reports whether c is a known classifier.
func Valid(c string) bool {
	_, ok := vocabulary[c]
	return ok
}

// Validate returns the classifiers in cs that are not in the vocabulary.
func Validate(cs []string) []string {
	var unknown []string
	for _, c := range cs {
		if !Valid(c) {
			unknown = append(unknown, c)
		}
	}
	return unknown
}

// License extracts a license name from "License ::" classifiers.
// The last segment of the first matching classifier is returned,
// preferring the SPDX identifier when one is known.
func License(cs []string) string {
	for _, c := range cs {
		if !strings.HasPrefix(c, "License :: ") {
			continue
		}
		if id, ok := licenseSPDX[c]; ok {
			return id
		}
		parts := strings.Split(c, " :: ")
		return parts[len(parts)-1]
	}
	return ""
}

// SPDX maps a License classifier to its SPDX identifier.
// Returns "" when the classifier names no single identifier
// (e.g. "License :: OSI Approved").
func SPDX(classifier string) string {
	return licenseSPDX[classifier]
}

// ValidSPDX reports whether expr is a valid SPDX license expression.
func ValidSPDX(expr string) bool {
	if expr == "" {
		return false
	}
	ok, _ := spdxexp.ValidateLicenses([]string{expr})
	return ok
}

// licenseSPDX maps License classifiers to SPDX identifiers. Classifiers that
// cover a license family rather than one license are absent.
var licenseSPDX = map[string]string{
	"License :: OSI Approved :: Apache Software License":                           "Apache-2.0",
	"License :: OSI Approved :: BSD License":                                       "BSD-2-Clause",
	"License :: OSI Approved :: GNU General Public License v2 (GPLv2)":             "GPL-2.0-only",
	"License :: OSI Approved :: GNU General Public License v2 or later (GPLv2+)":   "GPL-2.0-or-later",
	"License :: OSI Approved :: GNU General Public License v3 (GPLv3)":             "GPL-3.0-only",
	"License :: OSI Approved :: GNU General Public License v3 or later (GPLv3+)":   "GPL-3.0-or-later",
	"License :: OSI Approved :: GNU Lesser General Public License v2 (LGPLv2)":     "LGPL-2.0-only",
	"License :: OSI Approved :: GNU Lesser General Public License v3 (LGPLv3)":     "LGPL-3.0-only",
	"License :: OSI Approved :: ISC License (ISCL)":                                "ISC",
	"License :: OSI Approved :: MIT License":                                       "MIT",
	"License :: OSI Approved :: Mozilla Public License 2.0 (MPL 2.0)":              "MPL-2.0",
	"License :: OSI Approved :: The Unlicense (Unlicense)":                         "Unlicense",
	"License :: OSI Approved :: zlib/libpng License":                               "Zlib",
	"License :: OSI Approved :: Python Software Foundation License":                "PSF-2.0",
	"License :: OSI Approved :: European Union Public Licence 1.2 (EUPL 1.2)":      "EUPL-1.2",
	"License :: OSI Approved :: GNU Affero General Public License v3":              "AGPL-3.0-only",
	"License :: OSI Approved :: GNU Affero General Public License v3 or later (AGPLv3+)": "AGPL-3.0-or-later",
	"License :: CC0 1.0 Universal (CC0 1.0) Public Domain Dedication":              "CC0-1.0",
}

// vocabulary holds the accepted classifier strings. This is the subset of
// the index's list in active use; the full list changes rarely and additions
// land here as they appear in the wild.
var vocabulary = map[string]struct{}{}

func init() {
	for _, c := range vocabularyList {
		vocabulary[c] = struct{}{}
	}
	for c := range licenseSPDX {
		vocabulary[c] = struct{}{}
	}
}

var vocabularyList = []string{
	"Development Status :: 1 - Planning",
	"Development Status :: 2 - Pre-Alpha",
	"Development Status :: 3 - Alpha",
	"Development Status :: 4 - Beta",
	"Development Status :: 5 - Production/Stable",
	"Development Status :: 6 - Mature",
	"Development Status :: 7 - Inactive",

	"Environment :: Console",
	"Environment :: Web Environment",
	"Environment :: X11 Applications",
	"Environment :: MacOS X",
	"Environment :: Win32 (MS Windows)",
	"Environment :: No Input/Output (Daemon)",

	"Framework :: Django",
	"Framework :: Flask",
	"Framework :: Jupyter",
	"Framework :: Pytest",
	"Framework :: Sphinx",

	"Intended Audience :: Developers",
	"Intended Audience :: End Users/Desktop",
	"Intended Audience :: Information Technology",
	"Intended Audience :: Science/Research",
	"Intended Audience :: System Administrators",

	"License :: OSI Approved",
	"License :: Public Domain",
	"License :: Other/Proprietary License",

	"Natural Language :: English",
	"Natural Language :: French",
	"Natural Language :: German",
	"Natural Language :: Japanese",
	"Natural Language :: Spanish",

	"Operating System :: OS Independent",
	"Operating System :: POSIX",
	"Operating System :: POSIX :: Linux",
	"Operating System :: POSIX :: BSD",
	"Operating System :: MacOS",
	"Operating System :: MacOS :: MacOS X",
	"Operating System :: Microsoft :: Windows",
	"Operating System :: Unix",

	"Programming Language :: C",
	"Programming Language :: C++",
	"Programming Language :: Cython",
	"Programming Language :: Go",
	"Programming Language :: Rust",
	"Programming Language :: Python",
	"Programming Language :: Python :: 2",
	"Programming Language :: Python :: 2.7",
	"Programming Language :: Python :: 3",
	"Programming Language :: Python :: 3 :: Only",
	"Programming Language :: Python :: 3.6",
	"Programming Language :: Python :: 3.7",
	"Programming Language :: Python :: 3.8",
	"Programming Language :: Python :: 3.9",
	"Programming Language :: Python :: 3.10",
	"Programming Language :: Python :: 3.11",
	"Programming Language :: Python :: 3.12",
	"Programming Language :: Python :: 3.13",
	"Programming Language :: Python :: Implementation :: CPython",
	"Programming Language :: Python :: Implementation :: PyPy",

	"Topic :: Internet",
	"Topic :: Internet :: WWW/HTTP",
	"Topic :: Scientific/Engineering",
	"Topic :: Security",
	"Topic :: Security :: Cryptography",
	"Topic :: Software Development",
	"Topic :: Software Development :: Build Tools",
	"Topic :: Software Development :: Libraries",
	"Topic :: Software Development :: Libraries :: Python Modules",
	"Topic :: System :: Archiving :: Packaging",
	"Topic :: System :: Systems Administration",
	"Topic :: Terminals",
	"Topic :: Text Processing",
	"Topic :: Utilities",

	"Typing :: Typed",
}
