package main

// VERSION is reported by --version and in the default User-Agent.
const VERSION = "0.4.0"

var defaultUserAgent = "download/" + VERSION
