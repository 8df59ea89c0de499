package main

// Set at build time with -ldflags "-X main.gitSHA1=...".
var (
	gitSHA1  string = "unknown"
	gitDirty string = "unknown"
)

func GitSHA1() string {
	return gitSHA1
}

func GitDirty() string {
	return gitDirty
}
