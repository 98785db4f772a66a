// Package errors provides structured error types for better observability
// and programmatic error handling across the application.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeExecutionFailed,
//	    "failed to run plan",
//	    execErr,
//	    map[string]interface{}{
//	        "plan":     "01",
//	        "executor": "docker",
//	    },
//	)
package errors
