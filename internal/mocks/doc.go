// Package mocks provides centralized mock implementations for testing.
//
// Mocks follow one pattern: a function field per interface method and
// default return values used when the field is nil.
//
//	tasks := &mocks.MockTaskService{
//	    GetFn: func(ctx context.Context, id int64) (*domain.Task, error) {
//	        return nil, store.ErrTaskNotFound
//	    },
//	}
//
// When adding a new mock to this package:
//  1. Create a new file named after the interface being mocked
//  2. Implement the mock struct with function fields for each interface method
//  3. Add a compile time assertion that the mock satisfies the interface
package mocks
