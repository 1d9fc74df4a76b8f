// This file is part of source2adoc.
// © 2024, sommerfeld.io and the source2adoc contributors
// SPDX-License-Identifier: GPL-3.0

// Package junitxml writes reports in the JUnit XML format understood by CI servers.
package junitxml

import (
	"encoding/xml"
	"fmt"
	"time"
)

// JUnitTestSuites is the root element of a report.
type JUnitTestSuites struct {
	XMLName xml.Name         `xml:"testsuites"`
	Suites  []JUnitTestSuite `xml:"testsuite"`
}

// JUnitTestSuite groups the test cases of one run.
type JUnitTestSuite struct {
	XMLName    xml.Name        `xml:"testsuite"`
	Tests      int             `xml:"tests,attr"`
	Failures   int             `xml:"failures,attr"`
	Errors     int             `xml:"errors,attr"`
	Time       string          `xml:"time,attr"`
	Name       string          `xml:"name,attr"`
	Properties []JUnitProperty `xml:"properties>property,omitempty"`
	TestCases  []JUnitTestCase `xml:"testcase"`
}

// JUnitTestCase is a single checked item.
type JUnitTestCase struct {
	XMLName   xml.Name      `xml:"testcase"`
	Classname string        `xml:"classname,attr"`
	Name      string        `xml:"name,attr"`
	Time      string        `xml:"time,attr"`
	Failure   *JUnitFailure `xml:"failure,omitempty"`
	Error     *JUnitError   `xml:"error,omitempty"`
}

// JUnitProperty is a name/value pair attached to a suite.
type JUnitProperty struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

// JUnitFailure marks a test case whose check failed.
type JUnitFailure struct {
	Message  string `xml:"message,attr"`
	Type     string `xml:"type,attr"`
	Contents string `xml:",chardata"`
}

// JUnitError marks a test case that could not be checked.
type JUnitError struct {
	Message  string `xml:"message,attr"`
	Type     string `xml:"type,attr"`
	Contents string `xml:",chardata"`
}

// AddProperty appends a property to the suite.
func (suite *JUnitTestSuite) AddProperty(name, value string) {
	suite.Properties = append(suite.Properties, JUnitProperty{Name: name, Value: value})
}

// RegisterTestCase adds the test case and updates the counters.
func (suite *JUnitTestSuite) RegisterTestCase(testcase JUnitTestCase) error {
	if testcase.Failure != nil && testcase.Error != nil {
		return fmt.Errorf("test case %q cannot be both failed and erroneous", testcase.Name)
	}
	suite.TestCases = append(suite.TestCases, testcase)
	suite.Tests++
	if testcase.Failure != nil {
		suite.Failures++
	}
	if testcase.Error != nil {
		suite.Errors++
	}
	return nil
}

// TestCount returns the number of registered test cases.
func (suite *JUnitTestSuite) TestCount() int {
	return suite.Tests
}

// SuccessCount returns the number of test cases without failure or error.
func (suite *JUnitTestSuite) SuccessCount() int {
	return suite.Tests - suite.Failures - suite.Errors
}

// FailureCount returns the number of failed test cases.
func (suite *JUnitTestSuite) FailureCount() int {
	return suite.Failures
}

// ErrorCount returns the number of erroneous test cases.
func (suite *JUnitTestSuite) ErrorCount() int {
	return suite.Errors
}

// RegisterFailure marks the test case as failed.
func (testcase *JUnitTestCase) RegisterFailure(failureType, message, contents string) {
	testcase.Failure = &JUnitFailure{Type: failureType, Message: message, Contents: contents}
}

// RegisterError marks the test case as erroneous.
func (testcase *JUnitTestCase) RegisterError(errorType, message, contents string) {
	testcase.Error = &JUnitError{Type: errorType, Message: message, Contents: contents}
}

// FormatTime renders a duration in seconds with millisecond precision.
func FormatTime(d time.Duration) string {
	return fmt.Sprintf("%.3f", d.Seconds())
}

// RegisterElapsedTime stores the time since start in target. Meant to be deferred.
func RegisterElapsedTime(start time.Time, target *string) {
	*target = FormatTime(time.Since(start))
}
