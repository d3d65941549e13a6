// Package jsx converts the generated UI source dialect (an ES module with a
// single default-exported component function returning JSX) into a Starlark
// program the sandbox can execute under a controlled scope. Module-loading
// statements are stripped because every binding is supplied by the scope;
// icon import statements are surfaced so the sandbox can resolve icon
// bindings selectively instead of exposing the whole icon set.
package jsx
