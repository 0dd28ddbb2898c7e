// Package domain contains the types shared by every randfile component: the
// job descriptions consumed by writers, the results they produce, the
// interfaces implemented by adapters, and the error types they return.
package domain
