/*
Package config loads and validates mirror job files for dirmirror.

	            +-------------+
	            |   Config    |
	            |  (one job)  |
	            +------+------+
	                   |
	     +-------------+-------------+
	     |             |             |
	+----+----+   +----+----+   +----+----+
	|  YAML   |   |  JSON   |   |   HCL   |
	| Parser  |   | Parser  |   | Parser  |
	+---------+   +---------+   +---------+

🎯 Purpose:
- Describes a single source → destination mirror job
- Chooses a decoder from the file extension
- Rejects unknown fields in every format

🔄 Flow:
1. Reads the file through an fsys.FS
2. Decodes it with the parser registered for its extension
3. Resolves relative paths against the file's directory
4. Validates and fills in defaults

📝 Example:

	# dirmirror.yaml
	source: ./site
	destination: /srv/www
	log_file: logs/mirror.log
	exclude:
	  - "*.tmp"
	  - .git
	recursive_file_prune: false

The same job in HCL:

	source      = "./site"
	destination = "/srv/www"
	exclude     = ["*.tmp", ".git"]
*/
package config
