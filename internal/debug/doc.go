/*
Package debug provides APIs for conditional runtime assertions.

# Using Assert

To enable runtime assertions, build with the assert tag. When the assert tag
is omitted, the code for the assertion will be omitted from the binary.
*/
package debug
