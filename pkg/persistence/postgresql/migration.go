package postgresql

func migrations() map[int]string {
	return map[int]string{
		1: `
			-- Create workflows table
			CREATE TABLE workflows (
				id UUID PRIMARY KEY,
				name VARCHAR(255) NOT NULL,
				description TEXT NOT NULL DEFAULT '',
				trigger_type VARCHAR(100) NOT NULL,
				trigger_config JSONB NOT NULL DEFAULT '{}',
				conditions JSONB NOT NULL DEFAULT '[]',
				condition_logic VARCHAR(10) NOT NULL DEFAULT 'AND' CHECK (condition_logic IN ('AND', 'OR')),
				actions JSONB NOT NULL DEFAULT '[]',
				is_enabled BOOLEAN NOT NULL DEFAULT true,
				created_at TIMESTAMP WITH TIME ZONE NOT NULL,
				updated_at TIMESTAMP WITH TIME ZONE NOT NULL
			);

			CREATE INDEX idx_workflows_trigger_type ON workflows(trigger_type);
			CREATE INDEX idx_workflows_is_enabled ON workflows(is_enabled);
			CREATE INDEX idx_workflows_created_at ON workflows(created_at);
		`,
		2: `
			-- Create email_templates table
			CREATE TABLE email_templates (
				id UUID PRIMARY KEY,
				name VARCHAR(255) NOT NULL,
				subject VARCHAR(998) NOT NULL DEFAULT '',
				body TEXT NOT NULL DEFAULT '',
				created_at TIMESTAMP WITH TIME ZONE NOT NULL,
				updated_at TIMESTAMP WITH TIME ZONE NOT NULL
			);

			CREATE INDEX idx_email_templates_name ON email_templates(name);
		`,
		3: `
			-- Create case_snapshots table for workflow dry runs
			CREATE TABLE case_snapshots (
				id VARCHAR(255) PRIMARY KEY,
				fields JSONB NOT NULL DEFAULT '{}',
				updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
			);
		`,
	}
}
