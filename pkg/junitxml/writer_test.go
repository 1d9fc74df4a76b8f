// This file is part of source2adoc.
// © 2024, sommerfeld.io and the source2adoc contributors
// SPDX-License-Identifier: GPL-3.0

package junitxml

import (
	"bytes"
	"encoding/xml"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMinimalDocument(t *testing.T) {
	testsuites := JUnitTestSuites{}

	var buf bytes.Buffer
	require.NoError(t, testsuites.Write(&buf), "Unable to write XML document")
	require.True(t, strings.HasPrefix(buf.String(), "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n"))
	require.Contains(t, buf.String(), "<testsuites></testsuites>")
}

func TestOneTestSuite(t *testing.T) {
	testsuites := JUnitTestSuites{}
	ts := JUnitTestSuite{
		Time: FormatTime(1234000000),
		Name: "source2adoc-check",
	}
	ts.AddProperty("go.version", runtime.Version())

	testCase := JUnitTestCase{
		Classname: "src/scripts",
		Name:      "build.sh",
		Time:      FormatTime(51345000),
	}
	testCase.RegisterFailure("FAILURE", "missing header documentation", "no ## comments found")
	require.NoError(t, ts.RegisterTestCase(testCase))
	require.NoError(t, ts.RegisterTestCase(JUnitTestCase{Classname: "src", Name: "Makefile"}))
	testsuites.Suites = append(testsuites.Suites, ts)

	path := filepath.Join(t.TempDir(), "report.xml")
	require.NoError(t, testsuites.WriteFile(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "\n\t<testsuite ", "elements are indented with tabs")

	var decoded JUnitTestSuites
	require.NoError(t, xml.Unmarshal(data, &decoded), "XML document must be well-formed")
	require.Len(t, decoded.Suites, 1)
	suite := decoded.Suites[0]
	require.Equal(t, "source2adoc-check", suite.Name)
	require.Equal(t, 2, suite.Tests)
	require.Equal(t, 1, suite.Failures)
	require.Equal(t, "1.234", suite.Time)
	require.Len(t, suite.Properties, 1)
	require.Equal(t, "go.version", suite.Properties[0].Name)
	require.Len(t, suite.TestCases, 2)
	require.NotNil(t, suite.TestCases[0].Failure)
	require.Equal(t, "missing header documentation", suite.TestCases[0].Failure.Message)
	require.Equal(t, "no ## comments found", suite.TestCases[0].Failure.Contents)
	require.Nil(t, suite.TestCases[1].Failure)
}

func TestWriteFileReplacesReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xml")
	first := JUnitTestSuites{Suites: []JUnitTestSuite{{Name: "first"}, {Name: "second"}}}
	require.NoError(t, first.WriteFile(path))
	require.NoError(t, JUnitTestSuites{Suites: []JUnitTestSuite{{Name: "third"}}}.WriteFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded JUnitTestSuites
	require.NoError(t, xml.Unmarshal(data, &decoded))
	require.Len(t, decoded.Suites, 1)
	require.Equal(t, "third", decoded.Suites[0].Name)
}

func TestWriteFileToMissingDirectory(t *testing.T) {
	err := JUnitTestSuites{}.WriteFile(filepath.Join(t.TempDir(), "missing", "report.xml"))
	require.Error(t, err)
}

func TestFormatTime(t *testing.T) {
	tests := []struct {
		duration time.Duration
		expected string
	}{
		{0, "0.000"},
		{time.Second, "1.000"},
		{1500 * time.Millisecond, "1.500"},
		{123 * time.Millisecond, "0.123"},
	}
	for _, tc := range tests {
		result := FormatTime(tc.duration)
		require.Equal(t, tc.expected, result)
	}
}

func TestRegisterTestCase(t *testing.T) {
	suite := &JUnitTestSuite{Name: "test-suite"}

	// Register a successful test case
	tc1 := JUnitTestCase{Name: "test1", Classname: "class1"}
	err := suite.RegisterTestCase(tc1)
	require.NoError(t, err)
	require.Equal(t, 1, suite.Tests)
	require.Equal(t, 1, suite.TestCount())
	require.Equal(t, 0, suite.Failures)
	require.Equal(t, 0, suite.Errors)

	// Register a failed test case
	tc2 := JUnitTestCase{Name: "test2", Classname: "class1"}
	tc2.RegisterFailure("FAILURE", "test failed", "details")
	err = suite.RegisterTestCase(tc2)
	require.NoError(t, err)
	require.Equal(t, 2, suite.Tests)
	require.Equal(t, 1, suite.Failures)

	// A test case cannot fail and error at the same time
	bad := JUnitTestCase{Name: "bad"}
	bad.RegisterFailure("FAILURE", "a", "b")
	bad.RegisterError("ERROR", "c", "d")
	require.Error(t, suite.RegisterTestCase(bad))
	require.Equal(t, 2, suite.Tests)

	// Register a test case with error
	tc3 := JUnitTestCase{Name: "test3", Classname: "class1"}
	tc3.RegisterError("ERROR", "execution error", "details")
	err = suite.RegisterTestCase(tc3)
	require.NoError(t, err)
	require.Equal(t, 3, suite.Tests)
	require.Equal(t, 1, suite.Errors)
}

func TestSuiteCounters(t *testing.T) {
	suite := &JUnitTestSuite{Name: "test-suite"}

	// Add a successful test
	suite.RegisterTestCase(JUnitTestCase{Name: "success1"})

	// Add a failed test
	failedTC := JUnitTestCase{Name: "failed1"}
	failedTC.RegisterFailure("FAILURE", "msg", "contents")
	suite.RegisterTestCase(failedTC)

	// Add an error test
	errorTC := JUnitTestCase{Name: "error1"}
	errorTC.RegisterError("ERROR", "msg", "contents")
	suite.RegisterTestCase(errorTC)

	// Add another successful test
	suite.RegisterTestCase(JUnitTestCase{Name: "success2"})

	require.Equal(t, 4, suite.TestCount())
	require.Equal(t, 2, suite.SuccessCount())
	require.Equal(t, 1, suite.FailureCount())
	require.Equal(t, 1, suite.ErrorCount())
}

func TestRegisterFailure(t *testing.T) {
	tc := &JUnitTestCase{Name: "test"}
	require.Nil(t, tc.Failure)

	tc.RegisterFailure("FAILURE", "test failed", "expected X got Y")

	require.NotNil(t, tc.Failure)
	require.Equal(t, "FAILURE", tc.Failure.Type)
	require.Equal(t, "test failed", tc.Failure.Message)
	require.Equal(t, "expected X got Y", tc.Failure.Contents)
}

func TestRegisterError(t *testing.T) {
	tc := &JUnitTestCase{Name: "test"}
	require.Nil(t, tc.Error)

	tc.RegisterError("ERROR", "execution failed", "stack trace")

	require.NotNil(t, tc.Error)
	require.Equal(t, "ERROR", tc.Error.Type)
	require.Equal(t, "execution failed", tc.Error.Message)
	require.Equal(t, "stack trace", tc.Error.Contents)
}

func TestAddProperty(t *testing.T) {
	suite := &JUnitTestSuite{Name: "test-suite"}
	require.Empty(t, suite.Properties)

	suite.AddProperty("key1", "value1")
	suite.AddProperty("key2", "value2")

	require.Len(t, suite.Properties, 2)
	require.Equal(t, "key1", suite.Properties[0].Name)
	require.Equal(t, "value1", suite.Properties[0].Value)
	require.Equal(t, "key2", suite.Properties[1].Name)
	require.Equal(t, "value2", suite.Properties[1].Value)
}

func TestRegisterElapsedTime(t *testing.T) {
	var timeStr string
	start := time.Now()
	time.Sleep(10 * time.Millisecond)
	RegisterElapsedTime(start, &timeStr)

	require.NotEmpty(t, timeStr)
	// The time should be at least 0.010 seconds (10ms)
	require.Contains(t, timeStr, ".")
}
