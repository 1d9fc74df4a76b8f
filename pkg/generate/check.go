// This file is part of source2adoc.
// © 2024, sommerfeld.io and the source2adoc contributors
// SPDX-License-Identifier: GPL-3.0

package generate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sommerfeld-io/source2adoc/pkg/codefile"
	"github.com/sommerfeld-io/source2adoc/pkg/junitxml"
	"github.com/sommerfeld-io/source2adoc/pkg/version"
)

// ErrCheckFailed is returned by Check when code files lack header documentation.
var ErrCheckFailed = errors.New("code files without header documentation")

const (
	returnSuccess = iota // the file is documented
	returnFailure        // the file has no header documentation
	returnError          // the file could not be checked
)

func result(code int) string {
	switch code {
	case returnFailure:
		return "FAILURE"
	case returnError:
		return "ERROR"
	default:
		return "SUCCESS"
	}
}

// Check verifies that every code file has header documentation. Each file becomes a test case
// of the returned suite. The source directory is the only required option.
func (r *Runner) Check(ctx context.Context) (*junitxml.JUnitTestSuite, error) {
	if r.opts.SourceDir == "" {
		return nil, fmt.Errorf("required option %q not set", "source-dir")
	}
	suite := &junitxml.JUnitTestSuite{Name: r.opts.SourceDir}
	suite.AddProperty("source2adoc-version", version.Version())
	defer junitxml.RegisterElapsedTime(time.Now(), &suite.Time)

	files, err := r.findCodeFiles()
	if err != nil {
		return nil, err
	}

	returnCode := returnSuccess
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		testcase, code := r.checkFile(file)
		returnCode = max(returnCode, code)
		if err := suite.RegisterTestCase(*testcase); err != nil {
			return nil, fmt.Errorf("failed to register test case: %w", err)
		}
	}

	fmt.Fprintf(r.out, "%s: %d files - %d documented, %d undocumented, %d errors\n", result(returnCode),
		suite.TestCount(), suite.SuccessCount(), suite.FailureCount(), suite.ErrorCount())
	if returnCode != returnSuccess {
		return suite, fmt.Errorf("%d of %d: %w", suite.FailureCount()+suite.ErrorCount(), suite.TestCount(), ErrCheckFailed)
	}
	return suite, nil
}

func (r *Runner) checkFile(file *codefile.CodeFile) (*junitxml.JUnitTestCase, int) {
	testcase := &junitxml.JUnitTestCase{
		Classname: file.Path(),
		Name:      file.Filename(),
	}
	defer junitxml.RegisterElapsedTime(time.Now(), &testcase.Time)

	file.SetCommentFormat(r.opts.CommentFormat)
	err := file.ReadFileContent()
	if err == nil {
		err = file.Parse()
	}
	switch {
	case err != nil:
		testcase.RegisterError(result(returnError), "unable to check file", err.Error())
		r.reportCheck(file, r.fail.Sprint("ERROR"))
		return testcase, returnError
	case !file.HasHeaderDocs():
		testcase.RegisterFailure(result(returnFailure), "missing header documentation",
			fmt.Sprintf("%s has no leading comment lines starting with ##", file.FullPath()))
		r.reportCheck(file, r.fail.Sprint("FAIL"))
		return testcase, returnFailure
	}
	r.reportCheck(file, r.pass.Sprint("PASS"))
	return testcase, returnSuccess
}

func (r *Runner) reportCheck(file *codefile.CodeFile, status string) {
	fmt.Fprintf(r.out, " FILE %s: %s\n", r.source.Sprint(file.FullPath()), status)
}
