// Package atomcss compiles style-definition files into atomic CSS.
//
// Every property/value/condition triple of a style namespace becomes one
// hashed class, so identical declarations across files share a rule. Call
// sites merge namespaces with last-write-wins semantics and resolve to a
// plain class string.
//
// # Compiling
//
//	cfg := atomcss.DefaultConfig()
//	cfg.Output = "web/static/atoms.css"
//	cfg.Metadata = "web/static/atoms.json"
//	result, err := atomcss.Compile(cfg)
//	if err != nil {
//		// result.Issues lists every failing file; the rest still compiled
//	}
//	err = atomcss.WriteFiles(result, cfg)
//
// # Style-definition files
//
//	create:
//	  button:
//	    color: red
//	    ':hover': {color: blue}
//	    '@media (max-width: 600px)': {padding: 4}
//	merge:
//	  primary: [button, 'isActive && active']
//
// # CLI Tool
//
//	go install github.com/yacobolo/atomcss/cmd/atomcss@latest
package atomcss
