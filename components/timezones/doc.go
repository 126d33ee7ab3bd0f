// Package timezones provides an IANA zone list and a form options callback
// offering it as select choices. The list is embedded from data/zones.txt.
package timezones
