// Package wrapper turns wrapcall wrappers into command middleware.
package wrapper
