package portscan

// CommonPorts is the default scan profile: well-known TCP ports in ascending
// order. Callers wanting a quick reachability sweep probe these.
var CommonPorts = []int{
	21,   // FTP
	22,   // SSH
	23,   // Telnet
	25,   // SMTP
	53,   // DNS
	80,   // HTTP
	110,  // POP3
	111,  // RPC
	135,  // MSRPC
	139,  // NetBIOS
	143,  // IMAP
	443,  // HTTPS
	445,  // SMB
	993,  // IMAPS
	995,  // POP3S
	1723, // PPTP
	3306, // MySQL
	3389, // RDP
	5432, // PostgreSQL
	5900, // VNC
	8080, // HTTP-Alt
	8443, // HTTPS-Alt
}
